package main

import (
	"etfsim/cmd"
	"log"
)

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	deps.Logger.Infow("starting api", "port", deps.Config.Port)
	err = deps.ApiHandler.StartApi(deps.Config.Port)
	if err != nil {
		deps.Logger.Fatalw("api exited", "error", err.Error())
	}
}
