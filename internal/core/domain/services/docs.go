// Package services holds domain logic that spans several aggregates:
//
//   - ExpiryPolicy: the time thresholds behind expiry, overdue and backlog rules
//   - OrderDispatcher: the admission checks that hand an Unaccepted order to a driver
//   - notice builders: the texts sent to buyers and drivers after each operation
package services
