// Command flagreg-demo shows the flagreg API end to end: define a few
// flags, parse the process arguments, and print the effective values.
//
// Try:
//
//	flagreg-demo -port 9000 -log_level debug extra tokens
//	flagreg-demo --help
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/zjrosen/flagreg"
)

func main() {
	reg := flagreg.New()

	port := flagreg.Must(reg.DefineInt("port", 8080, "TCP port to listen on"))
	host := flagreg.Must(reg.DefineString("host", "localhost", "Hostname to bind"))
	level := flagreg.Must(reg.DefineToken("log_level", "info", "Log verbosity: debug, info, warn, error"))
	verbose := flagreg.Must(reg.DefineBool("verbose", false, "Enable verbose output"))
	timeout := flagreg.Must(reg.DefineFloat("timeout", 30.0, "Request timeout in seconds"))

	if err := reg.AddRangeValidator("port", 1, 65535); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := reg.AddAllowedValuesValidator("log_level",
		flagreg.Token("debug"), flagreg.Token("info"), flagreg.Token("warn"), flagreg.Token("error")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := reg.AddRangeValidator("timeout", 0, math.Inf(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rest, err := reg.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("port:      %s (default: %t)\n", port.Get(), port.IsDefault())
	fmt.Printf("host:      %s (default: %t)\n", host.Get(), host.IsDefault())
	fmt.Printf("log_level: %s (default: %t)\n", level.Get(), level.IsDefault())
	fmt.Printf("verbose:   %s (default: %t)\n", verbose.Get(), verbose.IsDefault())
	fmt.Printf("timeout:   %s (default: %t)\n", timeout.Get(), timeout.IsDefault())
	if len(rest) > 0 {
		fmt.Printf("leftover:  %v\n", rest)
	}
	fmt.Printf("serialized: %s\n", reg.ToDisplayString())
}
