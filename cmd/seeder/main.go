// Command seeder loads tea-auction back-office seed batches into Postgres.
package main

func main() {
	Execute()
}
