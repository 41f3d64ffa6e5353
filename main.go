package main

import (
	"Nova/Config"
	"Nova/FiberConfig"
	"Nova/Models"
)

func main() {
	Config.Load()
	Models.Connect()
	FiberConfig.FiberConfig()
}
