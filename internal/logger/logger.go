package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
)

var (
	isDebug = false

	// подменяется в тестах
	exit = os.Exit

	CritColor    = color.RGB(255, 0, 0).SprintFunc()
	DebugColor   = color.RGB(255, 165, 0).SprintFunc()
	WarningColor = color.RGB(255, 255, 0).SprintFunc()
	EventColor   = color.RGB(0, 255, 0).SprintFunc()
)

type (
	loggerConfig struct {
		Logging *struct {
			// Сохранять ли логи
			Enabled bool `yaml:"enabled"`
			// В какую папку сохранять по умолчанию "./log"
			Directory string `yaml:"directory"`
			// Формат даты и времени в имени файла
			FilenameFormat string `yaml:"filename_format"`
		} `yaml:"logging"`

		// Настройки цветов
		Color *struct {
			// Отключить все цвета
			NoColor bool `yaml:"no_color"`

			Crit    colorConf `yaml:"crit"`
			Debug   colorConf `yaml:"debug"`
			Warning colorConf `yaml:"warning"`
			Event   colorConf `yaml:"event"`
		} `yaml:"color"`
	}

	colorConf struct {
		Enabled bool    `yaml:"enabled"`
		Rgb     *[3]int `yaml:"rgb"`
	}
)

// InitLogger configures the std logger. The returned file, if any, must be
// closed by the caller on shutdown.
func InitLogger(debug bool, configPath string) *os.File {
	isDebug = debug
	color.NoColor = true

	log.SetPrefix("[BOT] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lmsgprefix)

	if configPath == "" {
		return nil
	}

	input, err := os.Open(configPath)
	if err != nil {
		Info("Logger settings not found, using defaults")
		return nil
	}
	defer input.Close()

	cnf := &loggerConfig{}
	if err := yaml.NewDecoder(input).Decode(cnf); err != nil {
		Warning("Error while decoding logger settings", err)
		return nil
	}

	applyColors(cnf)

	return openLogFile(cnf)
}

func applyColors(cnf *loggerConfig) {
	if cnf.Color == nil || cnf.Color.NoColor {
		return
	}
	color.NoColor = false

	setColorCnf := func(cData colorConf, globColor *func(a ...interface{}) string) {
		if !cData.Enabled {
			d := new(color.Color)
			d.DisableColor()
			*globColor = d.SprintFunc()
			return
		}
		if cData.Rgb != nil {
			*globColor = color.RGB((*cData.Rgb)[0], (*cData.Rgb)[1], (*cData.Rgb)[2]).SprintFunc()
		}
	}

	setColorCnf(cnf.Color.Crit, &CritColor)
	setColorCnf(cnf.Color.Debug, &DebugColor)
	setColorCnf(cnf.Color.Warning, &WarningColor)
	setColorCnf(cnf.Color.Event, &EventColor)
}

func openLogFile(cnf *loggerConfig) *os.File {
	if cnf.Logging == nil || !cnf.Logging.Enabled {
		return nil
	}
	if cnf.Logging.Directory == "" {
		cnf.Logging.Directory = "./log"
	}
	if cnf.Logging.FilenameFormat == "" {
		cnf.Logging.FilenameFormat = "bot"
	}

	if err := os.MkdirAll(cnf.Logging.Directory, 0o755); err != nil {
		Warning("Can't create log directory, logs are not saved:", err)
		return nil
	}

	fileName := filepath.Join(cnf.Logging.Directory, time.Now().Format(cnf.Logging.FilenameFormat)+".log")
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o666)
	if err != nil {
		Warning("Can't open log file, logs are not saved:", err)
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))

	return logFile
}

func Info(v ...interface{}) {
	log.Print("[INFO] ", fmt.Sprintln(v...))
}

func Event(v ...interface{}) {
	log.Print(EventColor("[EVENT] ", fmt.Sprintln(v...)))
}

func Warning(v ...interface{}) {
	log.Print(WarningColor("[WARNING] ", fmt.Sprintln(v...)))
}

func Debug(v ...interface{}) {
	if !isDebug {
		return
	}
	message := new(bytes.Buffer)

	for _, str := range v {
		if s, ok := str.(string); ok {
			_, _ = fmt.Fprintf(message, "%s ", s)
			continue
		}
		b, _ := json.MarshalIndent(str, "", " ")
		_, _ = fmt.Fprintf(message, "%s ", string(b))
	}

	log.Print(DebugColor("[DEBUG] ", message))
}

func Crit(v ...interface{}) {
	log.Print(CritColor("[CRIT] ", fmt.Sprintln(v...)))
	time.Sleep(time.Second)
	exit(1)
}
