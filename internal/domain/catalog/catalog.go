// Package catalog holds the fixed vehicle, component and cluster vocabularies
// shared by facets, suggestions and the cluster restriction.
package catalog

import (
	"strings"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

// Models returns the vehicle model catalog.
func Models() []string {
	return []string{"SUV X3", "Sedan E5", "Coupe S2", "Hatchback H1", "Electric EV4"}
}

// Components returns the component catalog.
func Components() []string {
	return []string{
		"Infotainment System", "Climate Control", "Driver Assistance", "Engine",
		"Transmission", "Interior Materials", "Exterior Design",
	}
}

// Cluster is a named grouping of components used as a filter restriction.
type Cluster struct {
	ID         string
	Name       string
	Components []string
	// Polarity restricts membership to one sentiment bucket; empty means any.
	Polarity feedback.Bucket
}

// Contains reports whether rec belongs to the cluster.
func (c Cluster) Contains(rec feedback.Record) bool {
	if c.Polarity != "" && rec.Bucket() != c.Polarity {
		return false
	}
	comp := strings.ToLower(rec.Component())
	for _, term := range c.Components {
		if strings.Contains(comp, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

var clusters = []Cluster{
	{ID: "1", Name: "Infotainment System Issues", Components: []string{"Infotainment"}, Polarity: feedback.Negative},
	{ID: "2", Name: "Climate Control Problems", Components: []string{"Climate Control"}, Polarity: feedback.Negative},
	{
		ID: "3", Name: "Positive Driving Experience",
		Components: []string{"Driver Assistance", "Engine", "Transmission"}, Polarity: feedback.Positive,
	},
	{
		ID: "4", Name: "Interior Comfort Highlights",
		Components: []string{"Interior Materials", "Climate Control"}, Polarity: feedback.Positive,
	},
}

// Clusters returns the cluster catalog.
func Clusters() []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)
	return out
}

// ClusterByID looks up a cluster.
func ClusterByID(id string) (Cluster, bool) {
	for _, c := range clusters {
		if c.ID == id {
			return c, true
		}
	}
	return Cluster{}, false
}
