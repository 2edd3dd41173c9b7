package main

import (
	_ "embed"

	"github.com/ankibridge/ankibridge-service/cmd"
)

//go:embed config/config.yaml
var defaultConfig []byte

func main() {
	cmd.Execute(defaultConfig)
}
