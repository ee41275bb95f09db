// Package kernel contains shared value objects used across the domain model.
// Currently it provides the UUID identifier type that all aggregates and
// entities use for identity.
package kernel
