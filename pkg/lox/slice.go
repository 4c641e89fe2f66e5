package lox

func Map[T, R any](collection []T, iteratee func(item T) R) []R {
	result := make([]R, len(collection))

	for i, item := range collection {
		result[i] = iteratee(item)
	}

	return result
}

func Filter[T any](collection []T, predicate func(item T) bool) []T {
	result := make([]T, 0, len(collection))

	for _, item := range collection {
		if predicate(item) {
			result = append(result, item)
		}
	}

	return result
}
