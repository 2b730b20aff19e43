// Package main is the entry point for the riftwind CLI tool, which fetches
// League of Legends match history and builds an AI-narrated year in review.
package main

import "github.com/Sveder/riftwind/cmd"

func main() {
	cmd.Execute()
}
