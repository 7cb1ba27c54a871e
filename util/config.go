package util

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"strconv"
)

const Name = "pictogram"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host            string
		HttpPort        int    `yaml:"httpPort"`
		DbPath          string `yaml:"dbPath"`
		BaseURL         string `yaml:"baseUrl"`
		SessionTTLHours int    `yaml:"sessionTtlHours"`
		StorySweepMins  int    `yaml:"storySweepMins"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	var buf []byte
	var err error

	// Try to read from resolved path
	buf, err = os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		// Try to write default config to user config directory
		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("PICTOGRAM_HOST")
	envHttpPort := os.Getenv("PICTOGRAM_HTTPPORT")
	envDbPath := os.Getenv("PICTOGRAM_DBPATH")
	envBaseURL := os.Getenv("PICTOGRAM_BASEURL")
	envSessionTTL := os.Getenv("PICTOGRAM_SESSION_TTL_HOURS")
	envStorySweep := os.Getenv("PICTOGRAM_STORY_SWEEP_MINS")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.HttpPort = v
	}

	if envDbPath != "" {
		c.Conf.DbPath = envDbPath
	}

	if envBaseURL != "" {
		c.Conf.BaseURL = envBaseURL
	}

	if envSessionTTL != "" {
		v, err := strconv.Atoi(envSessionTTL)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.SessionTTLHours = v
	}

	if envStorySweep != "" {
		v, err := strconv.Atoi(envStorySweep)
		if err != nil {
			fmt.Println(err)
		}
		c.Conf.StorySweepMins = v
	}

	if c.Conf.SessionTTLHours <= 0 {
		c.Conf.SessionTTLHours = 72
	}

	if c.Conf.StorySweepMins <= 0 {
		c.Conf.StorySweepMins = 30
	}

	return c, nil
}
