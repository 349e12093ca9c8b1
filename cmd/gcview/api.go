package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/gcode"
	"github.com/mastercactapus/gcview/model"
)

type api struct {
	http.Handler
	dataDir string
	sse     *sse.Server
	ws      websocket.Upgrader
}

func newAPI(dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		dataDir: dir,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
		ws: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r.HandleFunc("/api/files", a.listFiles).Methods("GET")
	r.HandleFunc("/api/files/{name}/document", a.serveDocument).Methods("GET")
	r.HandleFunc("/api/files/{name}/stats", a.serveStats).Methods("GET")
	r.HandleFunc("/api/files/{name}/layers/{index:[0-9]+}", a.serveLayer).Methods("GET")
	r.HandleFunc("/ws/files/{name}", a.streamDocument).Methods("GET")

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

type fileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type fileEvent struct {
	Action string `json:"action"`
	Name   string `json:"name"`
}

type movementJSON struct {
	Src      [3]float64 `json:"src"`
	Dst      [3]float64 `json:"dst"`
	DeltaE   float64    `json:"deltaE"`
	FeedRate float64    `json:"feedRate"`
	Flags    model.Flag `json:"flags"`
	Category string     `json:"category"`
}

type layerJSON struct {
	Index     int            `json:"index"`
	Z         float64        `json:"z"`
	Movements []movementJSON `json:"movements"`
}

type documentJSON struct {
	Name   string      `json:"name"`
	Layers []layerJSON `json:"layers"`
}

type statsJSON struct {
	Name           string     `json:"name"`
	Layers         int        `json:"layers"`
	Movements      int        `json:"movements"`
	PathLength     float64    `json:"pathLength"`
	ExtrudedLength float64    `json:"extrudedLength"`
	Min            [3]float64 `json:"min"`
	Max            [3]float64 `json:"max"`
	ParseTime      string     `json:"parseTime"`
}

func pt(p coord.Point) [3]float64 { return [3]float64{p.X, p.Y, p.Z} }

func movementsJSON(l model.Layer) []movementJSON {
	res := make([]movementJSON, len(l))
	for i, m := range l {
		res[i] = movementJSON{
			Src:      pt(m.Src),
			Dst:      pt(m.Dst),
			DeltaE:   m.DeltaE,
			FeedRate: m.FeedRate,
			Flags:    m.Flags,
			Category: m.Category().String(),
		}
	}
	return res
}

func newLayerJSON(index int, l model.Layer) layerJSON {
	return layerJSON{Index: index, Z: l.Z(), Movements: movementsJSON(l)}
}

func isGcodeName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gcode", ".ngc", ".nc":
		return true
	}
	return false
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	if base == "" {
		base = "."
	}
	fullName := filepath.Join(base, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// openDocument loads and parses the named file, writing the error
// response itself when that fails.
func (a *api) openDocument(w http.ResponseWriter, req *http.Request) (*model.Document, string, bool) {
	name := mux.Vars(req)["name"]
	ok, fullName := safePath(a.dataDir, name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, "", false
	}

	f, err := os.Open(fullName)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return nil, "", false
	}
	if err != nil {
		log.Printf("ERROR: open '%s': %+v", fullName, err)
		http.Error(w, err.Error(), 500)
		return nil, "", false
	}
	defer f.Close()

	start := time.Now()
	doc, err := gcode.Parse(f)
	if err != nil {
		log.Printf("ERROR: parse '%s': %+v", fullName, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	log.Printf("parsed '%s' in %s: %d layers, %d movements",
		name, time.Since(start), len(doc.Layers), doc.MovementCount())

	return doc, name, true
}

func (a *api) listFiles(w http.ResponseWriter, req *http.Request) {
	infos, err := ioutil.ReadDir(a.dataDir)
	if os.IsNotExist(err) {
		infos = nil
	} else if err != nil {
		log.Printf("ERROR: list '%s': %+v", a.dataDir, err)
		http.Error(w, err.Error(), 500)
		return
	}

	files := make([]fileInfo, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() || !isGcodeName(fi.Name()) {
			continue
		}
		files = append(files, fileInfo{Name: fi.Name(), Size: fi.Size(), Modified: fi.ModTime()})
	}

	err = json.NewEncoder(w).Encode(files)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) serveDocument(w http.ResponseWriter, req *http.Request) {
	doc, name, ok := a.openDocument(w, req)
	if !ok {
		return
	}

	res := documentJSON{Name: name, Layers: make([]layerJSON, len(doc.Layers))}
	for i, l := range doc.Layers {
		res.Layers[i] = newLayerJSON(i, l)
	}
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) serveStats(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	doc, name, ok := a.openDocument(w, req)
	if !ok {
		return
	}

	min, max := doc.Bounds()
	err := json.NewEncoder(w).Encode(statsJSON{
		Name:           name,
		Layers:         len(doc.Layers),
		Movements:      doc.MovementCount(),
		PathLength:     doc.PathLength(),
		ExtrudedLength: doc.ExtrudedLength(),
		Min:            pt(min),
		Max:            pt(max),
		ParseTime:      time.Since(start).Round(time.Microsecond).String(),
	})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) serveLayer(w http.ResponseWriter, req *http.Request) {
	doc, _, ok := a.openDocument(w, req)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(mux.Vars(req)["index"])
	if err != nil || idx >= len(doc.Layers) {
		http.NotFound(w, req)
		return
	}

	err = json.NewEncoder(w).Encode(newLayerJSON(idx, doc.Layers[idx]))
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// streamDocument sends a parsed document over a websocket one layer
// per message, so a viewer can start drawing before the full
// document arrives.
func (a *api) streamDocument(w http.ResponseWriter, req *http.Request) {
	doc, _, ok := a.openDocument(w, req)
	if !ok {
		return
	}

	conn, err := a.ws.Upgrade(w, req, nil)
	if err != nil {
		log.Println("ERROR: upgrade:", err)
		return
	}
	defer conn.Close()

	for i, l := range doc.Layers {
		err = conn.WriteJSON(newLayerJSON(i, l))
		if err != nil {
			log.Println("ERROR: send:", err)
			return
		}
	}

	err = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		log.Println("ERROR: close:", err)
	}
}

func (a *api) notifyFiles(action, name string) {
	data, err := json.Marshal(fileEvent{Action: action, Name: name})
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage("/events/files", sse.SimpleMessage(string(data)))
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	a.notifyFiles("put", strings.TrimPrefix(req.URL.Path, "/"))
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	a.notifyFiles("delete", strings.TrimPrefix(req.URL.Path, "/"))
}
