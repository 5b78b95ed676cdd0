package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/gptcode/internal/config"
)

// ErrSetupAborted is returned when input ends during first-run setup.
var ErrSetupAborted = errors.New("setup aborted")

type setupPrompter interface {
	ReadInput(ctx context.Context, prompt string) (string, error)
	WriteInfo(text string)
}

// runSetup asks for a credential and a model on first start and saves
// them. An empty credential is asked again unless the provider's
// environment variable already holds one.
func runSetup(ctx context.Context, prompter setupPrompter, store *config.Store, providerName string, getenv func(string) string) (*config.Config, error) {
	prompter.WriteInfo("\n✨ GPTCode first-time setup ✨\n")

	envName := config.APIKeyEnv(providerName)
	envKey := ""
	if envName != "" && getenv != nil {
		envKey = strings.TrimSpace(getenv(envName))
	}

	prompt := fmt.Sprintf("Enter your %s API key: ", providerName)
	if envKey != "" {
		prompt = fmt.Sprintf("Enter your %s API key (leave empty to use $%s): ", providerName, envName)
	}
	key, err := readSetupLine(ctx, prompter, prompt)
	if err != nil {
		return nil, err
	}
	for key == "" && envKey == "" {
		if key, err = readSetupLine(ctx, prompter, "The API key must not be empty. Please try again: "); err != nil {
			return nil, err
		}
	}

	defaultModel := config.DefaultModelFor(providerName)
	model, err := readSetupLine(ctx, prompter, fmt.Sprintf("Preferred model [%s]: ", defaultModel))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = defaultModel
	}

	cfg, err := store.Update(func(c *config.Config) {
		c.APIKey = key
		c.Model = model
		c.Provider = providerName
	})
	if err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}

	configPath, _ := store.Path()
	prompter.WriteInfo(fmt.Sprintf("\n✅ Saved to %s\n", configPath))
	return cfg, nil
}

func readSetupLine(ctx context.Context, prompter setupPrompter, prompt string) (string, error) {
	line, err := prompter.ReadInput(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSetupAborted, err)
	}
	return strings.TrimSpace(line), nil
}
