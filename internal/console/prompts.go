package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (c *Console) readLine() string {
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (c *Console) promptString(label string) string {
	for {
		fmt.Fprintf(c.out, "%s: ", label)
		value := c.readLine()
		if value != "" {
			return value
		}
		fmt.Fprintln(c.out, "A value is required.")
	}
}

// promptOptional returns "" when the user just presses Enter.
func (c *Console) promptOptional(label string) string {
	fmt.Fprintf(c.out, "%s (Enter to skip): ", label)
	return c.readLine()
}

func (c *Console) promptInt(label string) int {
	for {
		fmt.Fprintf(c.out, "%s: ", label)
		value, err := strconv.Atoi(c.readLine())
		if err == nil {
			return value
		}
		fmt.Fprintln(c.out, "Please enter a valid number.")
	}
}

func (c *Console) promptUint(label string) uint {
	for {
		fmt.Fprintf(c.out, "%s: ", label)
		value, err := strconv.ParseUint(c.readLine(), 10, 32)
		if err == nil {
			return uint(value)
		}
		fmt.Fprintln(c.out, "Please enter a valid id.")
	}
}

func (c *Console) promptFloat(label string) float64 {
	for {
		fmt.Fprintf(c.out, "%s: ", label)
		value, err := strconv.ParseFloat(c.readLine(), 64)
		if err == nil {
			return value
		}
		fmt.Fprintln(c.out, "Please enter a valid number.")
	}
}

// promptDate accepts YYYY-MM-DD, defaulting to today on Enter.
func (c *Console) promptDate(label string) time.Time {
	for {
		fmt.Fprintf(c.out, "%s (YYYY-MM-DD, Enter for today): ", label)
		value := c.readLine()
		if value == "" {
			return time.Now()
		}
		date, err := time.Parse("2006-01-02", value)
		if err == nil {
			return date
		}
		fmt.Fprintln(c.out, "Please use the YYYY-MM-DD format.")
	}
}

func (c *Console) promptYesNo(label string) bool {
	fmt.Fprintf(c.out, "%s (y/n): ", label)
	return strings.EqualFold(c.readLine(), "y")
}

// choose prints a numbered menu and reads a selection; 0 is always back.
func (c *Console) choose(title string, items []string) int {
	fmt.Fprintf(c.out, "\n%s:\n", title)
	fmt.Fprintln(c.out, "----------------------------------------")
	for i, item := range items {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, item)
	}
	fmt.Fprintln(c.out, "0. Exit/Back")

	for {
		fmt.Fprintf(c.out, "\nEnter your choice (0-%d): ", len(items))
		choice, err := strconv.Atoi(c.readLine())
		if err == nil && choice >= 0 && choice <= len(items) {
			return choice
		}
		fmt.Fprintf(c.out, "Please enter a number between 0 and %d.\n", len(items))
	}
}
