package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Eriw/podcast-transcriber/internal/client"
)

func main() {
	var (
		server    = flag.String("server", "http://localhost:8000", "Backend server base URL")
		mode      = flag.String("mode", "default", "Search mode: default, itunes_podcasts, itunes_episodes")
		query     = flag.String("query", "", "Search query")
		podcastID = flag.Int64("podcast-id", 0, "Podcast collection ID, lists that podcast's episodes")
		limit     = flag.Int("limit", 10, "Max results to request")
		pick      = flag.Int("pick", 0, "Index of the result to act on")

		findEpisodes = flag.Bool("find-episodes", false, "List episodes of the picked podcast result")
		transcribe   = flag.Bool("transcribe", false, "Transcribe the picked result's audio")
		summarize    = flag.Bool("summarize", false, "Summarize the transcript")
		out          = flag.String("out", "", "Write transcript and summary to this file instead of stdout")
	)
	flag.Parse()

	if *query == "" && *podcastID == 0 {
		fmt.Fprintln(os.Stderr, "either -query or -podcast-id is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	session := client.NewSession(client.New(*server))
	session.SetLimit(*limit)
	if err := session.SetMode(client.Mode(*mode)); err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	var results []client.Record
	var err error
	if *podcastID != 0 && *query == "" {
		results, err = session.FindEpisodes(ctx, client.Record{ID: *podcastID})
	} else {
		results, err = session.Search(ctx, *query)
	}
	if err != nil {
		log.Fatalf("Search failed: %s", session.LastMessage())
	}
	printResults(results)

	if *findEpisodes {
		podcast, err := session.Result(*pick)
		if err != nil {
			log.Fatalf("Failed to pick result: %v", err)
		}
		results, err = session.FindEpisodes(ctx, podcast)
		if err != nil {
			log.Fatalf("Episode lookup failed: %s", session.LastMessage())
		}
		fmt.Printf("\nEpisodes of %q:\n", podcast.Title)
		printResults(results)
	}

	if !*transcribe && !*summarize {
		return
	}

	episode, err := session.Result(*pick)
	if err != nil {
		log.Fatalf("Failed to pick result: %v", err)
	}

	log.Printf("Transcribing %q", episode.Title)
	transcript, err := session.Transcribe(ctx, episode)
	if err != nil {
		log.Fatalf("Transcription failed: %s", session.LastMessage())
	}
	writeOut(*out, "Transcript", transcript)

	if *summarize {
		log.Printf("Summarizing transcript (%d chars)", len(transcript))
		summary, err := session.Summarize(ctx)
		if err != nil {
			log.Fatalf("Summarization failed: %s", session.LastMessage())
		}
		writeOut(*out, "Summary", summary)
	}
}

func printResults(results []client.Record) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, r := range results {
		switch r.Type {
		case "podcast":
			fmt.Printf("%2d. [podcast] %s by %s (id %d)\n", i, r.Title, r.Artist, r.ID)
		case "episode":
			fmt.Printf("%2d. [episode] %s (%s)\n", i, r.Title, r.PodcastTitle)
		default:
			fmt.Printf("%2d. %s\n", i, r.Title)
		}
	}
}

func writeOut(path, label, text string) {
	if path == "" {
		fmt.Printf("\n--- %s ---\n%s\n", label, text)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()
	fmt.Fprintf(f, "--- %s ---\n%s\n\n", label, text)
	log.Printf("%s written to %s", label, path)
}
