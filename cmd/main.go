package main

import (
	"context"
	"fmt"
	"log"
	"os"

	notescmd "github.com/thomas-vilte/releasemate/internal/commands/notes"
	cfg "github.com/thomas-vilte/releasemate/internal/config"
	"github.com/thomas-vilte/releasemate/internal/git"
	"github.com/thomas-vilte/releasemate/internal/i18n"
	"github.com/thomas-vilte/releasemate/internal/ui"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("could not determine the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, fmt.Errorf("could not load translations: %w", err)
	}

	gitService := git.NewGitService()
	factory := notescmd.NewGenerateCommandFactory(gitService, cfgApp)

	return factory.CreateCommand(translations), translations, nil
}
