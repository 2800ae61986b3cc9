package resample

// Weights is a dense observations x replicas matrix of bootstrap weights.
type Weights struct {
	rows     int
	replicas int
	data     []float64
}

func newWeights(rows, replicas int) *Weights {
	return &Weights{rows: rows, replicas: replicas, data: make([]float64, rows*replicas)}
}

// Rows returns the number of observations.
func (w *Weights) Rows() int { return w.rows }

// Replicas returns the number of replicas per observation.
func (w *Weights) Replicas() int { return w.replicas }

// Row returns the replica weights of observation i. The slice aliases w.
func (w *Weights) Row(i int) []float64 {
	return w.data[i*w.replicas : (i+1)*w.replicas : (i+1)*w.replicas]
}

// At returns the weight of observation i in replica r.
func (w *Weights) At(i, r int) float64 {
	return w.data[i*w.replicas+r]
}
