// Copyright © 2025 The phpls authors

package main

import "github.com/phpindex/phpls/cmd"

func main() {
	cmd.Execute()
}
