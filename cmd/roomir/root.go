package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ROOMIR"

// options holds every setting after flags, environment and config file have
// been merged.
type options struct {
	configFile string
	logLevel   string
	format     string
	lang       string
	order      int

	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	opts := &options{log: logrus.New()}

	root := &cobra.Command{
		Use:   "roomir",
		Short: "Room-acoustic parameters from impulse responses",
		Long: `roomir evaluates ISO 3382-1 room-acoustic parameters such as
reverberation time, clarity, definition, sound strength, lateral energy and
IACC from omnidirectional, binaural or mid/side impulse responses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v, opts.configFile); err != nil {
				return err
			}

			if err := bindFlags(cmd, v); err != nil {
				return err
			}

			return configureLogger(opts.log, opts.logLevel, cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default roomir.yaml in . or $HOME/.config/roomir)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.format, "format", "o", "table", "output format (table, json, yaml)")
	pf.StringVar(&opts.lang, "lang", "en", "language tag for number formatting in tables")
	pf.IntVar(&opts.order, "order", 6, "band-pass order per octave band (even)")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newBandsCmd(opts),
		newSweepCmd(opts),
		newDeconvolveCmd(opts),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the config file into v and enables ROOMIR_* variables.
// A missing default config file is not an error; a missing explicit one is.
func loadConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %s: %w", file, err)
		}

		return nil
	}

	v.SetConfigName("roomir")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "roomir"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	return nil
}

// bindFlags applies config and environment values to every flag the user
// did not set explicitly.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if err := v.BindEnv(f.Name, envVar); err != nil {
			lastErr = err
		}

		if !f.Changed && v.IsSet(f.Name) {
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if f.Value.Type() == "stringSlice" {
				val = strings.Join(v.GetStringSlice(f.Name), ",")
			}

			if err := cmd.Flags().Set(f.Name, val); err != nil {
				lastErr = fmt.Errorf("%s: %w", f.Name, err)
			}
		}

		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func configureLogger(log *logrus.Logger, level string, cmd *cobra.Command) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	log.SetLevel(lvl)
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return nil
}
