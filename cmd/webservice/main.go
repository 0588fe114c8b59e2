package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/config"
	"github.com/yazeedhani/Gytshop-API/internal/app"
	"github.com/yazeedhani/Gytshop-API/internal/infrastructure/database/mongodb"
)

func main() {
	conf := config.CreateNewConfig()

	db, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", conf.MongoDBConfig.DBHost, conf.MongoDBConfig.DBPort), conf.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	a := app.App{
		DB:     db,
		Config: conf,
	}

	a.Start()
}
