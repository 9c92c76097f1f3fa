package main

import (
	"log"
	"net/http"

	"liferpg/internal/config"
	"liferpg/internal/serverapp"
)

func main() {
	cfg, err := config.Load("liferpg.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		log.Fatalf("apply env overrides: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
