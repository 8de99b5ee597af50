// Package main is the entry point for the csmatch CLI tool, which turns
// CS:GO server console logs into per-match statistics documents.
package main

import "github.com/pable/go-cs-matchlog/cmd"

func main() {
	cmd.Execute()
}
