// gridcalc evaluates cell scripts with the spreadsheet engine.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
