// Package services contains domain services that coordinate work across
// multiple aggregates. DeliveryAssigner keeps the Order and Agent aggregates
// consistent during assignment, reassignment and unassignment.
package services
