// Command nebulavrf-server answers randomness, commitment, and test-payload
// requests over HTTP.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/nebulavrf/nebulavrf/crypto/vrf/bls"
)

var (
	configFile = flag.String("config", "", "Location of config file.")
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.LUTC)
	flag.Parse()

	// Load config from disk.
	if *configFile == "" {
		log.Fatalf("No config file provided, see --help.")
	}
	config, err := ReadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Start the metrics and debugging server.
	if config.MetricsAddr != "" {
		go metrics(config.MetricsAddr)
	}

	// Setup handler for the API server.
	h := &Handler{config: config.APIConfig, scheme: bls.Scheme{}, rand: rand.Reader}
	r := mux.NewRouter()
	r.HandleFunc("/get-random", HandleAPI(h.GetRandom)).Methods("GET")
	r.HandleFunc("/verify-random", HandleAPI(h.VerifyRandom)).Methods("POST")
	r.HandleFunc("/commit", HandleAPI(h.Commit)).Methods("POST")
	r.HandleFunc("/verify-commit", HandleAPI(h.VerifyCommit)).Methods("POST")
	r.HandleFunc("/payloads", HandleAPI(h.Payloads)).Methods("GET")

	// Setup the API server.
	srv := &http.Server{
		Addr:      config.ServerAddr,
		Handler:   r,
		TLSConfig: config.tlsConfig,

		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		log.Println("Starting API server.")
		var err error
		if config.TLSConfig == nil {
			err = srv.ListenAndServe()
		} else {
			err = srv.ListenAndServeTLS("", "")
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Exit cleanly on SIGINT or SIGTERM.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shut down cleanly: %v", err)
	}
	log.Println("Shut down.")
}
