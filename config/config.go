package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Clock      Clock      `mapstructure:"clock" validate:"required"`
	Surface    Surface    `mapstructure:"surface" validate:"required"`
	Output     Output     `mapstructure:"output" validate:"required"`
	HTTP       HTTP       `mapstructure:"http" validate:"required"`
	Logging    Logging    `mapstructure:"logging" validate:"required"`
	FrameStore FrameStore `mapstructure:"frameStore" validate:"required"`
}

type Clock struct {
	Interface *string `mapstructure:"interface" validate:"required,oneof=analogue analog binary digital"`
	LEDColour *string `mapstructure:"ledColour" validate:"required"`
	// Interval is the tick period in milliseconds.
	Interval *int `mapstructure:"interval" validate:"required,min=1"`
	// RowWidths is the bit width of each binary row from year to second. A
	// width of 0 uses the natural width of the value.
	RowWidths []int `mapstructure:"rowWidths" validate:"len=6,dive,min=0,max=63"`
	// StatsEvery is how many ticks pass between paint time reports.
	StatsEvery *int `mapstructure:"statsEvery" validate:"required,min=1"`
}

type Surface struct {
	// Width and Height of 0 use the design size of the clock face.
	Width      *float64 `mapstructure:"width" validate:"required,min=0,max=4096"`
	Height     *float64 `mapstructure:"height" validate:"required,min=0,max=4096"`
	Fit        *bool    `mapstructure:"fit" validate:"required"`
	Background *string  `mapstructure:"background" validate:"required"`
}

type Output struct {
	// Path is empty when frames are not written to disk.
	Path   *string `mapstructure:"path"`
	Format *string `mapstructure:"format" validate:"required,oneof=png svg"`
}

type HTTP struct {
	// Addr is empty when the API server is disabled.
	Addr *string `mapstructure:"addr"`
}

type Logging struct {
	Driver   *string  `mapstructure:"driver" validate:"oneof=noop stdout influxdb"`
	InfluxDB InfluxDB `mapstructure:"influxdb" validate:"required_if=Driver influxdb"`
}

type InfluxDB struct {
	Host   *string `mapstructure:"host"`
	Token  *string `mapstructure:"token"`
	Org    *string `mapstructure:"org"`
	Bucket *string `mapstructure:"bucket"`
}

type FrameStore struct {
	Enabled  *bool   `mapstructure:"enabled" validate:"required"`
	Addr     *string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password *string `mapstructure:"password"`
	DB       *int    `mapstructure:"db" validate:"required,min=0"`
	Prefix   *string `mapstructure:"prefix" validate:"required"`
	// TTL is how long a stored frame lives, in seconds.
	TTL *int `mapstructure:"ttl" validate:"required,min=1"`
	// Events publishes a frame event to an rmq queue for every stored frame.
	Events *bool `mapstructure:"events" validate:"required"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("encountered validation errors:\n\t%s", strings.Join(e.Fields, "\n\t"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Clock.Interface", "analogue")
	v.SetDefault("Clock.LEDColour", "red")
	v.SetDefault("Clock.Interval", 1000)
	v.SetDefault("Clock.RowWidths", []int{0, 11, 11, 11, 11, 11})
	v.SetDefault("Clock.StatsEvery", 60)

	v.SetDefault("Surface.Width", 0)
	v.SetDefault("Surface.Height", 0)
	v.SetDefault("Surface.Fit", false)
	v.SetDefault("Surface.Background", "white")

	v.SetDefault("Output.Path", "")
	v.SetDefault("Output.Format", "png")

	v.SetDefault("HTTP.Addr", "")

	v.SetDefault("Logging.Driver", "noop")

	v.SetDefault("FrameStore.Enabled", false)
	v.SetDefault("FrameStore.Addr", "localhost:6379")
	v.SetDefault("FrameStore.Password", "")
	v.SetDefault("FrameStore.DB", 0)
	v.SetDefault("FrameStore.Prefix", "clockface")
	v.SetDefault("FrameStore.TTL", 10)
	v.SetDefault("FrameStore.Events", false)
}

// ReadConfig loads the configuration into v. The file at path is read when
// path is set; otherwise config.yaml is looked up in . and /app and may be
// absent. Environment variables such as CLOCK_INTERFACE override the file.
func ReadConfig(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/app")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error when reading config file: err = %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error occurred while reading configuration: err = %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("unable to validate config: err = %w", err)
		}
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, fieldErr.Error())
		}
		return nil, &ValidationError{Fields: fields}
	}

	return &config, nil
}
