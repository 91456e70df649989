package words

import (
	"fmt"
	"math/rand"
)

// Pool is the static catalog of candidate words. Each game draws a sample
// from it without replacement.
var Pool = []string{
	"Python", "Algorithm", "Database", "Neural Network", "Encryption",
	"Compiler", "Blockchain", "Cloud Computing", "Big Data", "Cybersecurity",
	"Artificial Intelligence", "Machine Learning", "Internet of Things", "Quantum Computing",
	"API", "Bug", "Cache", "Data Structure", "Debugging", "Front-end",
	"Back-end", "Full Stack", "GraphQL", "HTTP", "Kernel",
	"Linux", "Middleware", "Node.js", "Open Source", "React",
}

// Sample draws n distinct words from the pool in uniform random order.
func Sample(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}
	if n > len(Pool) {
		return nil, fmt.Errorf("sample size %d exceeds pool size %d", n, len(Pool))
	}

	shuffled := make([]string, len(Pool))
	copy(shuffled, Pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n], nil
}
