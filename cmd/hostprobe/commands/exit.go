package commands

import "os"

// exit is replaced in tests.
var exit = os.Exit
