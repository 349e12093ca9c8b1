package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mastercactapus/gcview/gcode"
)

func main() {
	log.SetFlags(log.Lshortfile)

	addr := flag.String("addr", ":9092", "Address to bind the gcview server to.")
	dir := flag.String("dir", "./data", "Directory gcode files are read from.")
	cfgFile := flag.String("config", "gcview.yml", "Path to a YAML config file.")
	flag.Parse()

	// with file arguments, just print a summary of each and exit
	if flag.NArg() > 0 {
		summarize(flag.Args())
		return
	}

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg := config{Addr: *addr, Dir: *dir}
	err := loadConfig(&cfg, *cfgFile, explicit["config"])
	if err != nil {
		log.Fatal(err)
	}
	// explicit flags win over the config file
	if explicit["addr"] {
		cfg.Addr = *addr
	}
	if explicit["dir"] {
		cfg.Dir = *dir
	}

	api := newAPI(cfg.Dir)

	log.Println("Listening on", cfg.Addr)
	err = http.ListenAndServe(cfg.Addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}

func summarize(names []string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tLAYERS\tMOVEMENTS\tPATH\tEXTRUDED\tPARSE")
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		start := time.Now()
		doc, err := gcode.Parse(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.1f\t%s\n",
			name, len(doc.Layers), doc.MovementCount(),
			doc.PathLength(), doc.ExtrudedLength(),
			time.Since(start).Round(time.Millisecond))
	}
	tw.Flush()
}
