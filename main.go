package main

import (
	"log"
	"os"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "dbupdate" {
		if err := RunDBUpdate(); err != nil {
			log.Fatal("database update failed: ", err)
		}
		return
	}

	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
