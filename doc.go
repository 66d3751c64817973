// Package genetic provides a generic evolutionary engine and an N-Queens
// solver built on it.
//
// Two encodings of the puzzle are supported. The permutation encoding keeps one
// queen per column and row, recombines parents with partially mapped crossover
// (PMX) and scores candidates by the number of attacking pairs, which the
// optimizer drives down to zero. The board encoding places queens freely,
// recombines any number of parents by vote crossover and scores candidates by
// the number of queens nobody attacks.
//
// Each generation keeps only the strongest members, breeds children from
// random disjoint families, mutates and re-evaluates them. The permutation
// evaluator maintains diagonal occupancy tables and finishes every evaluation
// with a single local-search probe.
//
// Basic usage:
//
//	// Load configuration
//	config, err := genetic.LoadConfig("configs/nqueens-8.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	problem, err := queens.NewPermutationProblem(config.Queens)
//	if err != nil {
//		log.Fatalf("Error building problem: %v", err)
//	}
//
//	// Create a new population
//	pop, err := genetic.NewPopulation[*queens.Permutation](config, problem)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	res, err := pop.Run(context.Background())
//	if err != nil {
//		log.Fatalf("Error running: %v", err)
//	}
//	fmt.Println("best:", res.Best)
package genetic
