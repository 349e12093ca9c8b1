package main

import (
	"fmt"
	"log"
	"strings"

	gc "github.com/joushou/gocnc/gcode"
	"github.com/joushou/gocnc/vm"

	"github.com/mastercactapus/gcview/gcode"
)

const program = `G1 X0 Y0 Z0 F900
G1 X10 Y0 Z0
G1 X10 Y10 Z0
G1 X10 Y10 Z0.3
G1 X0 Y10 Z0.3
`

func main() {
	log.SetFlags(log.Lshortfile)

	doc, err := gcode.ParseString(program)
	if err != nil {
		log.Fatal(err)
	}
	for i, l := range doc.Layers {
		fmt.Printf("layer %d: z=%.2f movements=%d path=%.1f\n",
			i, l.Z(), len(l), l.PathLength())
	}

	// run the same program through gocnc for comparison
	gdoc, err := gc.Parse(strings.TrimSpace(program))
	if err != nil {
		log.Fatal(err)
	}

	var m vm.Machine
	m.Init()
	m.Process(gdoc)
	m.Dump()
}
