package main

import (
	"flag"
	"os"

	"github.com/poselab/gopose/api"
	"github.com/poselab/gopose/event"
	"github.com/poselab/gopose/scene"
)

var log = event.Log

func main() {

	configFile := flag.String("c", "", "path to the JSON config file")
	listenAddr := flag.String("a", "", "listen address, overrides the config")
	workspace := flag.String("w", "", "workspace directory, overrides the config")
	debug := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	event.ConfigureLogging(*debug)

	config := scene.DefaultConfig()
	if *configFile != "" {
		var err error
		config, err = scene.LoadConfig(*configFile)
		if err != nil {
			log.Error("Cannot load config file: ", err)
			os.Exit(1)
		}
	}
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	if *workspace != "" {
		config.WorkspaceDir = *workspace
	}

	library, err := scene.NewLibrary(config.WorkspaceDir)
	if err != nil {
		log.Error("Cannot open workspace: ", err)
		os.Exit(1)
	}
	defer library.Close()

	log.WithFields(event.Fields{
		"workspace": config.WorkspaceDir,
		"auth":      config.EnableAuth,
	}).Info("Starting pose service")

	if err := api.NewServer(config, library).Run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
