package util

import (
	"os"
	"testing"
)

func TestConfigConstants(t *testing.T) {
	if Name != "pictogram" {
		t.Errorf("Expected Name 'pictogram', got '%s'", Name)
	}

	if ConfigFileName != "config.yaml" {
		t.Errorf("Expected ConfigFileName 'config.yaml', got '%s'", ConfigFileName)
	}
}

func TestReadConfWithYaml(t *testing.T) {
	// Create a test config file
	yamlContent := `
conf:
  host: 127.0.0.1
  httpPort: 9999
  dbPath: test.db
  baseUrl: http://example.com
  sessionTtlHours: 24
  storySweepMins: 10
`
	err := os.WriteFile("config.yaml", []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	defer os.Remove("config.yaml")

	config, err := ReadConf()
	if err != nil {
		t.Fatalf("ReadConf failed: %v", err)
	}

	if config.Conf.Host != "127.0.0.1" {
		t.Errorf("Expected Host '127.0.0.1', got '%s'", config.Conf.Host)
	}

	if config.Conf.HttpPort != 9999 {
		t.Errorf("Expected HttpPort 9999, got %d", config.Conf.HttpPort)
	}

	if config.Conf.DbPath != "test.db" {
		t.Errorf("Expected DbPath 'test.db', got '%s'", config.Conf.DbPath)
	}

	if config.Conf.BaseURL != "http://example.com" {
		t.Errorf("Expected BaseURL 'http://example.com', got '%s'", config.Conf.BaseURL)
	}

	if config.Conf.SessionTTLHours != 24 {
		t.Errorf("Expected SessionTTLHours 24, got %d", config.Conf.SessionTTLHours)
	}
}

func TestReadConfWithEnvOverrides(t *testing.T) {
	yamlContent := `
conf:
  host: 127.0.0.1
  httpPort: 9999
  dbPath: test.db
  baseUrl: http://example.com
`
	err := os.WriteFile("config.yaml", []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	defer os.Remove("config.yaml")

	os.Setenv("PICTOGRAM_HOST", "192.168.1.1")
	os.Setenv("PICTOGRAM_HTTPPORT", "8080")
	os.Setenv("PICTOGRAM_DBPATH", "override.db")
	os.Setenv("PICTOGRAM_BASEURL", "https://pictogram.test")

	defer func() {
		os.Unsetenv("PICTOGRAM_HOST")
		os.Unsetenv("PICTOGRAM_HTTPPORT")
		os.Unsetenv("PICTOGRAM_DBPATH")
		os.Unsetenv("PICTOGRAM_BASEURL")
	}()

	config, err := ReadConf()
	if err != nil {
		t.Fatalf("ReadConf failed: %v", err)
	}

	// Environment variables should override YAML values
	if config.Conf.Host != "192.168.1.1" {
		t.Errorf("Expected Host '192.168.1.1' from env, got '%s'", config.Conf.Host)
	}

	if config.Conf.HttpPort != 8080 {
		t.Errorf("Expected HttpPort 8080 from env, got %d", config.Conf.HttpPort)
	}

	if config.Conf.DbPath != "override.db" {
		t.Errorf("Expected DbPath 'override.db' from env, got '%s'", config.Conf.DbPath)
	}

	if config.Conf.BaseURL != "https://pictogram.test" {
		t.Errorf("Expected BaseURL 'https://pictogram.test' from env, got '%s'", config.Conf.BaseURL)
	}
}

func TestReadConfDefaults(t *testing.T) {
	yamlContent := `
conf:
  host: 127.0.0.1
  httpPort: 9999
  dbPath: test.db
`
	err := os.WriteFile("config.yaml", []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	defer os.Remove("config.yaml")

	config, err := ReadConf()
	if err != nil {
		t.Fatalf("ReadConf failed: %v", err)
	}

	// Session TTL and sweep interval fall back to defaults when unset
	if config.Conf.SessionTTLHours != 72 {
		t.Errorf("Expected default SessionTTLHours 72, got %d", config.Conf.SessionTTLHours)
	}

	if config.Conf.StorySweepMins != 30 {
		t.Errorf("Expected default StorySweepMins 30, got %d", config.Conf.StorySweepMins)
	}
}

func TestReadConfInvalidYaml(t *testing.T) {
	invalidYaml := `
conf:
  host: 127.0.0.1
  httpPort: not_a_number
  invalid yaml structure
`
	err := os.WriteFile("config.yaml", []byte(invalidYaml), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}
	defer os.Remove("config.yaml")

	_, err = ReadConf()
	if err == nil {
		t.Error("Expected error when parsing invalid YAML")
	}
}
