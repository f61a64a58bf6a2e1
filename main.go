// @title        WordSalad API
// @version      1.0
// @description  Generate paragraphs based on topic and word count
// @BasePath     /
package main

import (
	"os"

	"wordsalad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
