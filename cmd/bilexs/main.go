package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darkclainer/bilex"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

const shutdownTimeout = 10 * time.Second

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type Config struct {
	ZapConfig string `mapstructure:"zap_config"`
	LogLevel  string `mapstructure:"log_level"`
	Host      string `mapstructure:"host"`

	bilex.Config `mapstructure:",squash"`
}

func (c *Config) ZapConf() (*zap.Config, error) {
	var zapConf zap.Config
	if c.ZapConfig == "" {
		zapConf = zap.NewDevelopmentConfig()
	} else if err := json.Unmarshal([]byte(c.ZapConfig), &zapConf); err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("bad log level: %w", err)
		}
		zapConf.Level = level
	}
	return &zapConf, nil
}

func setDefaults(v *viper.Viper) {
	bilex.SetDefaults(v)
	v.SetDefault("host", "localhost:8080")
	v.SetDefault("zap_config", "")
	v.SetDefault("log_level", "")
}

func getConfig(args []string) (*Config, *zap.Config, error) {
	flags := pflag.NewFlagSet("bilexs", pflag.ContinueOnError)
	flags.StringP("config", "c", "config.yaml", "path to local config")
	flags.String("host", "localhost:8080", "address to listen on")
	flags.String("lexicon.path", "", "path to lexicon file, embedded lexicon is used if empty")
	flags.Bool("neural.enabled", false, "use neural translator for sentences")
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	setDefaults(v)
	if err := v.BindPFlags(flags); err != nil {
		return nil, nil, err
	}
	v.SetEnvPrefix("BILEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := v.GetString("config")
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err == nil {
		fmt.Printf("Using config file: %s\n", configPath)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("error while unmarshaling config: %w", err)
	}
	zapConf, err := conf.ZapConf()
	if err != nil {
		return nil, nil, err
	}
	return &conf, zapConf, nil
}

func main() {
	conf, zapConf, err := getConfig(os.Args[1:])
	if err != nil {
		exitf(codeErrorArgs, "Failure while parsing arguments: %s\n", err)
	}
	logger, err := zapConf.Build()
	if err != nil {
		exitf(codeErrorArgs, "Failure while instatiating logger: %s\n", err)
	}
	defer logger.Sync()

	logger.Info("Starting server")
	server, err := New(logger, conf)
	if err != nil {
		logger.Error("Can not initialize server", zap.Error(err))
		exitf(codeInternalError, "Can not initialize server: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Close(ctx); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Listening started", zap.String("address", "http://"+conf.Host))
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}
	logger.Info("Closed")
}
