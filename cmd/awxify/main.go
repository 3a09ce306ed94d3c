// Package main provides the awxify CLI tool for wrapping ansible vaulted
// variables in the document shape AWX expects.
package main

import "github.com/mscno/awxify/cmd/awxify/commands"

func main() {
	commands.Execute(Version)
}
