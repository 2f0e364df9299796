// Package constants provides shared constants for the day scheduler
package constants

// AppName is the name reported by the CLI and attached to log output
const AppName = "dayscheduler"

// DayField is the record key holding the (possibly combined) meeting day
const DayField = "day"
