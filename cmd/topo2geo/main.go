// Command topo2geo converts one object of a TopoJSON file to GeoJSON.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gogpu/globe"
	"github.com/gogpu/globe/topology"
)

func main() {
	var (
		input      = flag.String("input", "topo.json", "TopoJSON file")
		collection = flag.String("collection", globe.DefaultCollectionKey, "object to convert")
		output     = flag.String("output", "-", "GeoJSON file (- for stdout)")
		list       = flag.Bool("list", false, "list the objects in the topology and exit")
	)
	flag.Parse()

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	if *list {
		t, err := topology.Parse(data)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(strings.Join(t.ObjectNames(), "\n"))
		return
	}

	c, err := topology.Decode(data, *collection)
	if err != nil {
		log.Fatal(err)
	}
	out, err := topology.ToGeoJSON(c)
	if err != nil {
		log.Fatal(err)
	}

	if *output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(*output, out, 0o644)
	}
	if err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("converted %d features (%d rings)", c.Len(), c.RingCount())
}
