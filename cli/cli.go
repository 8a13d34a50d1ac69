package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/santiagomed/synapse/config"
	"github.com/santiagomed/synapse/core"
	"github.com/santiagomed/synapse/fs"
	"github.com/santiagomed/synapse/llm"
	"github.com/santiagomed/synapse/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synapse",
	Short: "Synapse generates models, controllers and views for ASP.NET Core MVC projects",
	Long: `Synapse inspects an ASP.NET Core MVC project and uses an LLM to generate models, controllers and Razor views.
Nothing is written to disk before you confirm it.

The LLM provider is read from config.json in the working directory. Run "synapse init" to create one.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := logger.GetLogger()
		if err := config.LoadDotEnv(".env"); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Could not load .env: %v", err)))
		}

		ui := NewTerminal(l)
		session := core.NewSession(fs.NewOsFileSystem(), ui, l)
		ctx := context.Background()

		fmt.Println(banner())
		if err := session.Configure(ctx, config.DefaultConfigFile, llm.NewClient); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			if errors.Is(err, config.ErrConfigMissingOrInvalid) {
				fmt.Println(faintStyle.Render(`Run "synapse init" to create a default config.json.`))
			}
			os.Exit(1)
		}

		cfg := session.Config()
		logger.SetLevel(cfg.LogLevel)
		ui.SetAccessible(cfg.Accessible)

		client := session.Client()
		fmt.Printf("Using %s (%s)\n\n", pathStyle.Render(client.Name()), client.Model())

		if err := session.Run(ctx); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			os.Exit(1)
		}
		fmt.Println(faintStyle.Render("Goodbye!"))
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.json in the working directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := config.CreateDefaultConfig(afero.NewOsFs(), config.DefaultConfigFile)
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Println(warnStyle.Render(fmt.Sprintf("%s already exists, leaving it untouched.", config.DefaultConfigFile)))
			return
		}
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			os.Exit(1)
		}
		fmt.Printf("Created %s. Edit it to choose your provider and model.\n", pathStyle.Render(config.DefaultConfigFile))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
