// Copyright (C) 2026 The Podscribe Authors.
//
// This file is part of Podscribe.
//
// Podscribe is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Podscribe is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Podscribe.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/defsub/podscribe"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverBleve    = "bleve"
	DriverMongo    = "mongo"
	DriverSqlite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type BucketConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	ObjectPrefix    string
	UseSSL          bool
}

func (b BucketConfig) Enabled() bool {
	return b.BucketName != ""
}

// DatabaseConfig is used by the sql store drivers. The dialect comes from
// StoreConfig.Driver.
type DatabaseConfig struct {
	Source  string
	LogMode bool
}

func (c DatabaseConfig) GormConfig() *gorm.Config {
	if c.LogMode {
		return &gorm.Config{Logger: logger.Default.LogMode(logger.Info)}
	}
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

type ClientConfig struct {
	CacheDir  string
	MaxAge    time.Duration
	UseCache  bool
	UserAgent string
}

func (c *ClientConfig) Merge(o ClientConfig) {
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	if o.MaxAge > 0 {
		c.MaxAge = o.MaxAge
	}
	c.UseCache = c.UseCache || o.UseCache
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

type FeedConfig struct {
	URL    string
	Client ClientConfig
}

type TranscribeConfig struct {
	Command   string // whisper executable
	Model     string
	Task      string
	Language  string // empty lets whisper detect
	Device    string
	OutputDir string // defaults to the audio file's directory
}

type StoreConfig struct {
	Driver     string // bleve, mongo, sqlite3, postgres or mysql
	Collection string
	Database   string // mongo database name
	URI        string // mongo connection string
	DB         DatabaseConfig
}

type SearchConfig struct {
	BleveDir string
	Limit    int
}

type Config struct {
	Archive     BucketConfig
	Client      ClientConfig
	DownloadDir string
	Feed        FeedConfig
	Search      SearchConfig
	Store       StoreConfig
	Transcribe  TranscribeConfig
}

// FeedClient returns the global client config with feed overrides applied.
func (c *Config) FeedClient() *ClientConfig {
	merged := c.Client
	merged.Merge(c.Feed.Client)
	return &merged
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("Client.CacheDir", ".httpcache")
	v.SetDefault("Client.MaxAge", "15m")
	v.SetDefault("Client.UseCache", "false")
	v.SetDefault("Client.UserAgent", userAgent())

	// empty defaults so environment overrides are seen by Unmarshal
	v.SetDefault("Archive.Endpoint", "")
	v.SetDefault("Archive.Region", "")
	v.SetDefault("Archive.AccessKeyID", "")
	v.SetDefault("Archive.SecretAccessKey", "")
	v.SetDefault("Archive.BucketName", "")
	v.SetDefault("Archive.ObjectPrefix", "")
	v.SetDefault("Archive.UseSSL", "true")

	v.SetDefault("DownloadDir", "downloaded_mp3s")

	v.SetDefault("Feed.URL", "")

	v.SetDefault("Search.BleveDir", ".")
	v.SetDefault("Search.Limit", "25")

	v.SetDefault("Store.Driver", DriverBleve)
	v.SetDefault("Store.Collection", "transcriptions_v2")
	v.SetDefault("Store.Database", "podscribe")
	v.SetDefault("Store.URI", "mongodb://localhost:27017")
	v.SetDefault("Store.DB.Source", "podscribe.db")
	v.SetDefault("Store.DB.LogMode", "false")

	v.SetDefault("Transcribe.Command", "whisper")
	v.SetDefault("Transcribe.Model", "large-v2")
	v.SetDefault("Transcribe.Task", "transcribe")
	v.SetDefault("Transcribe.Language", "")
	v.SetDefault("Transcribe.Device", "")
	v.SetDefault("Transcribe.OutputDir", "")
}

func userAgent() string {
	return podscribe.AppName + "/" + podscribe.Version + " ( " + podscribe.Contact + " ) "
}

var pathRegexp = regexp.MustCompile(`(file|dir|source)$`)

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	dir := filepath.Dir(v.ConfigFileUsed())
	for _, k := range v.AllKeys() {
		if !pathRegexp.MatchString(k) {
			continue
		}
		val, ok := v.Get(k).(string)
		if !ok || val == "" || filepath.IsAbs(val) || isDSN(val) {
			continue
		}
		v.Set(k, filepath.Join(dir, val))
	}
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, config.validate()
}

// isDSN reports whether val looks like a url or database connection string
// rather than a file path.
func isDSN(val string) bool {
	return strings.Contains(val, "://") || strings.ContainsAny(val, "=@")
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverBleve, DriverMongo, DriverSqlite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("store driver %q not supported", c.Store.Driver)
	}
	if c.Store.Collection == "" {
		return errors.New("store collection is required")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(podscribe.AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	configDefaults(v)
	return v
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	return readConfig(v)
}

func LoadConfig(dir string) (*Config, error) {
	v := newViper()
	v.AddConfigPath(dir)
	v.SetConfigName(podscribe.AppName)
	return readConfig(v)
}
