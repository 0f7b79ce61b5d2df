// Package sampler returns a bounded random sample of filtered speeches.
package sampler
