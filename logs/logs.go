package logs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

var Output *os.File

func InitializeFileLogger() {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("couldn't resolve home directory: %s", err)
	}
	dir := filepath.Join(home, ".tablefunc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("couldn't create ~/.tablefunc home directory: %s", err)
	}
	f, err := os.Create(filepath.Join(dir, "logs.txt"))
	if err != nil {
		log.Fatalf("couldn't create logs file: %s", err)
	}
	Output = f
	log.SetOutput(Output)
}

func CloseLogger() {
	Output.Close()
}
