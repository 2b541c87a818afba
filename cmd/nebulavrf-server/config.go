package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"

	"github.com/nebulavrf/nebulavrf/payloads"

	"gopkg.in/yaml.v2"
)

// Config specifies the file format of config files.
type Config struct {
	ServerAddr  string     `yaml:"addr"`
	MetricsAddr string     `yaml:"metrics"` // Optional; empty disables the metrics server.
	TLSConfig   *TLSConfig `yaml:"tls"`
	tlsConfig   *tls.Config

	APIConfig *APIConfig `yaml:"api"`
}

// TLSConfig specifies the API server's TLS config. Since this is only intended
// for use behind a trusted proxy, TLS on the server also starts requiring a
// valid client certificate.
type TLSConfig struct {
	Cert     string `yaml:"cert"`
	Key      string `yaml:"key"`
	ClientCA string `yaml:"client-ca"` // CA for validating client certificates.
}

// APIConfig holds the payload-generation defaults served on /payloads. Zero
// is a valid length and produces an empty field.
type APIConfig struct {
	SeedLen int `yaml:"seed-len"`
	SaltLen int `yaml:"salt-len"`
}

func ReadConfig(filename string) (*Config, error) {
	// Read from file and parse.
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var parsed Config
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	// Check that all required fields are populated and in range.
	if parsed.ServerAddr == "" {
		return nil, fmt.Errorf("field not provided: addr")
	}
	if parsed.APIConfig == nil {
		parsed.APIConfig = &APIConfig{SeedLen: payloads.DefaultLen, SaltLen: payloads.DefaultLen}
	}
	if n := parsed.APIConfig.SeedLen; n < 0 || n > payloads.MaxFieldLen {
		return nil, fmt.Errorf("api.seed-len out of range: %v", n)
	} else if n := parsed.APIConfig.SaltLen; n < 0 || n > payloads.MaxFieldLen {
		return nil, fmt.Errorf("api.salt-len out of range: %v", n)
	}

	// Parse TLS config if necessary.
	if parsed.TLSConfig != nil {
		cert, err := tls.LoadX509KeyPair(parsed.TLSConfig.Cert, parsed.TLSConfig.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate/key: %v", err)
		}

		certPool := x509.NewCertPool()
		caCerts, err := ioutil.ReadFile(parsed.TLSConfig.ClientCA)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS client CA: %v", err)
		} else if ok := certPool.AppendCertsFromPEM(caCerts); !ok {
			return nil, fmt.Errorf("no client CA certificates successfully parsed from file")
		}

		parsed.tlsConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			ClientAuth:   tls.RequireAndVerifyClientCert,
			ClientCAs:    certPool,
		}
	}

	return &parsed, nil
}
