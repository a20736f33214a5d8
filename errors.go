package main

import "errors"

var (
	errFailedToGetSessionFromContext = errors.New("failed to get session from context")
	errChartNeedsSpread              = errors.New("chart needs at least two distinct PC1 values")
	errUnknownEndpoint               = errors.New("unknown api endpoint")
)
