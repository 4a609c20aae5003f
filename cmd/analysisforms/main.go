// Command analysisforms inspects, renders and exports the analysis forms.
package main

import "os"

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
