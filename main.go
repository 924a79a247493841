package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/engagement"
	"clementus360/care-companion/handlers"
	"clementus360/care-companion/llm"
	"clementus360/care-companion/middleware"
	"clementus360/care-companion/notify"
	"clementus360/care-companion/scheduler"
	"clementus360/care-companion/store"
)

func main() {

	config.LoadEnv()
	config.InitLogger()

	dataStore, err := store.Open()
	if err != nil {
		config.Logger.Fatal("Failed to open store:", err)
	}

	generator, err := llm.NewGenerator("")
	if err != nil {
		config.Logger.Fatal("Failed to create text generator:", err)
	}

	push := notify.NewFCM()
	handlers.Init(dataStore, generator, push)

	engine := engagement.NewEngine(generator, rand.New(rand.NewSource(time.Now().UnixNano())))
	checkIns := scheduler.New(dataStore, engine, push, time.Hour, 8)
	go checkIns.Run(context.Background())

	mux := http.NewServeMux()

	mux.HandleFunc("POST /reminders/create", handlers.CreateRemindersHandler)
	mux.HandleFunc("GET /reminders", handlers.GetRemindersHandler)
	mux.HandleFunc("DELETE /reminders/delete", handlers.DeleteReminderHandler)
	mux.HandleFunc("POST /reminders/respond", handlers.RespondReminderHandler)
	mux.HandleFunc("POST /engage", handlers.EngageHandler)
	mux.HandleFunc("GET /adherence", handlers.AdherenceHandler)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	log.Println("Server is running on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
