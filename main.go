/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/tasktracker/cmd"
	"github.com/josephgoksu/tasktracker/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
