package commands

import (
	"fmt"

	"tasker/internal/service"
	"tasker/internal/viewstate"
)

// taskAtRow returns the task shown at a 1-based row of the current page.
func taskAtRow(v viewstate.View, row int) (service.Task, error) {
	if row < 1 || row > len(v.Tasks) {
		return service.Task{}, fmt.Errorf("row out of range: %d", row)
	}
	return v.Tasks[row-1], nil
}

// tasksAtRows resolves every row before anything is changed, so later
// reloads cannot shift which tasks the rows referred to.
func tasksAtRows(v viewstate.View, rows []int) ([]service.Task, error) {
	tasks := make([]service.Task, 0, len(rows))
	for _, row := range rows {
		task, err := taskAtRow(v, row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
