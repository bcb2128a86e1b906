package db

import (
	"fmt"
)

// CreateFixturesDatabase creates a database with realistic sample tasks
func CreateFixturesDatabase(dbPath string) error {
	if err := Initialize(dbPath); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	database, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	fixtures := []Task{
		{Description: "Renew car registration before the end of the month", Priority: PriorityHigh},
		{Description: "Reply to Dana about the weekend plans", Priority: PriorityHigh},
		{Description: "Buy milk", Priority: PriorityMedium},
		{Description: "Schedule dentist appointment", Priority: PriorityMedium},
		{Description: "Take the recycling out", Priority: PriorityMedium},
		{Description: "Sort through the garage shelves", Priority: PriorityLow},
		{Description: "Read the sourdough starter guide", Priority: PriorityLow},
	}

	for _, task := range fixtures {
		if _, err := database.AddTask(task.Description, task.Priority); err != nil {
			return fmt.Errorf("adding fixture task %q: %w", task.Description, err)
		}
	}

	return nil
}
