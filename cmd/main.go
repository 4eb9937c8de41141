package main

import "task-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectMongo()
	defer app.DisconnectMongo()

	app.MustConnectRedis()
	defer app.DisconnectRedis()

	app.MustListenAndServeHTTP()
}
