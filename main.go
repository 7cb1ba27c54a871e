package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MimansaPatle/pictogram/db"
	"github.com/MimansaPatle/pictogram/social"
	"github.com/MimansaPatle/pictogram/util"
	"github.com/MimansaPatle/pictogram/web"
)

func main() {

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("Configuration: ")
	fmt.Println(util.PrettyPrint(conf))

	database, err := db.Open(conf.Conf.DbPath)
	if err != nil {
		log.Fatalln(err)
	}

	service := social.NewService(database)
	service.StartStorySweeper(time.Duration(conf.Conf.StorySweepMins) * time.Minute)
	startSessionCleanup(service)

	startServing(conf, service, database)
}

func startSessionCleanup(service *social.Service) {
	ticker := time.NewTicker(time.Hour)
	go func() {
		for range ticker.C {
			service.DeleteExpiredSessions()
		}
	}()
}

func startServing(conf *util.AppConfig, service *social.Service, database *db.DB) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := web.Router(conf, service); err != nil {
			log.Fatalln(err)
		}
	}()

	<-done
	log.Println("Stopping server")
	if err := database.Close(); err != nil {
		log.Fatalln(err)
	}
}
