// Package sim runs the concurrent rental simulation. Rentals are grouped
// by identical start time; every rental in a group runs as its own task,
// and a join barrier releases only when the whole group has completed or
// been interrupted before the next group starts.
package sim
