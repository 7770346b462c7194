package database

import "fmt"

func schema(d dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schedules (
	id %s,
	title TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	start_time %s NOT NULL,
	end_time %s NOT NULL,
	details TEXT NOT NULL DEFAULT ''
)`, d.idColumn, d.timestampType, d.timestampType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS facilities (
	id %s,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	hours TEXT NOT NULL DEFAULT '',
	details TEXT NOT NULL DEFAULT ''
)`, d.idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS dining (
	id %s,
	name TEXT NOT NULL,
	cuisine TEXT NOT NULL DEFAULT '',
	hours TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	details TEXT NOT NULL DEFAULT ''
)`, d.idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS library (
	id %s,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	call_number TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'available'
)`, d.idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS admin (
	id %s,
	office TEXT NOT NULL,
	contact TEXT NOT NULL DEFAULT '',
	hours TEXT NOT NULL DEFAULT '',
	details TEXT NOT NULL DEFAULT ''
)`, d.idColumn),
	}
}
