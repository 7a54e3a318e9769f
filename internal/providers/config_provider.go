package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"avd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "AVD_LOG_LEVEL")
	viper.BindEnv("persistence.dataDir", "AVD_DATA_DIR")
	viper.BindEnv("persistence.saveInterval", "AVD_SAVE_INTERVAL")
	viper.BindEnv("backup.interval", "AVD_BACKUP_INTERVAL")
	viper.BindEnv("generator.enabled", "AVD_GENERATOR_ENABLED")
	viper.BindEnv("cache.enabled", "AVD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "AVD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Backup.Retain <= 0 {
		conf.Backup.Retain = 5
	}
	if conf.Maintenance.MaxLogEntries <= 0 {
		conf.Maintenance.MaxLogEntries = 1000
	}

	conf.AppName = "AviatorVirtualDatabase"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
