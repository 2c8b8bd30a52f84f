package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tdnguyen2104/virtual-queue/config"
	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	"github.com/tdnguyen2104/virtual-queue/internal/queue"
)

// Console simulation driver. A thin caller over the queue manager: it only
// collects arguments, invokes operations and formats the results.

func main() {
	interactive := flag.Bool("interactive", false, "run the interactive text menu instead of the scripted demo")
	flag.Parse()

	if *interactive {
		runInteractive()
		return
	}

	runDemo()
}

func runDemo() {
	mgr := queue.NewManager([]domain.ServiceConfig{
		{ID: "cashier", DisplayName: "Cashier", DailyCapacity: 3, AvgServiceMinutes: 5},
		{ID: "doctor", DisplayName: "Doctor Consultation", DailyCapacity: 2, AvgServiceMinutes: 10},
	})

	type step struct {
		action    string
		userName  string
		serviceID string
	}

	steps := []step{
		{"book", "Asha", "doctor"},
		{"book", "Ben", "doctor"},
		{"book", "Cara", "doctor"}, // capacity full edge case
		{"serve", "", "doctor"},
		{"serve", "", "doctor"},
		{"serve", "", "doctor"},     // empty queue edge case
		{"book", "", "cashier"},     // invalid name edge case
		{"book", "Deep", "unknown"}, // invalid service edge case
	}

	fmt.Println("=== Demo Scenario ===")
	for _, st := range steps {
		switch st.action {
		case "book":
			b, err := mgr.BookSlot(st.userName, st.serviceID)
			if err != nil {
				fmt.Printf("BOOK %s @ %s -> %s\n", st.userName, st.serviceID, err)
				continue
			}
			fmt.Printf("BOOK %s @ %s -> Booking confirmed.\n", st.userName, st.serviceID)
			fmt.Printf("  token=%s, est_wait=%dm, service=%s\n", b.Token, b.EstimatedWaitMinutes, b.ServiceID)
		case "serve":
			b, err := mgr.MarkServed(st.serviceID)
			if err != nil {
				fmt.Printf("SERVE %s -> %s\n", st.serviceID, err)
				continue
			}
			fmt.Printf("SERVE %s -> Marked served: token %s (%s).\n", st.serviceID, b.Token, b.UserName)
		}
	}

	fmt.Println("\nFinal status:")
	for _, row := range mgr.StatusRows() {
		fmt.Println(row)
	}
	fmt.Println()
	fmt.Println(mgr.HistoryGraph())
}

func runInteractive() {
	mgr := queue.NewManager(config.DefaultServices)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		printMenu()
		choice := askLine(scanner, "Select an option: ")

		switch choice {
		case "0":
			fmt.Println("Exiting.")
			return

		case "1":
			fmt.Println("\nAvailable services:")
			for _, s := range mgr.ListServices() {
				fmt.Printf("- id=%s, name=%s, daily_capacity=%d, avg_service_time=%dm\n",
					s.ID, s.DisplayName, s.DailyCapacity, s.AvgServiceMinutes)
			}

		case "2":
			userName := askLine(scanner, "Enter your name: ")
			serviceID := askLine(scanner, "Enter service id: ")
			b, err := mgr.BookSlot(userName, serviceID)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("Booking confirmed.")
			fmt.Printf("Token: %s | Service: %s | Estimated wait: %d minutes\n",
				b.Token, b.ServiceID, b.EstimatedWaitMinutes)

		case "3":
			serviceID := askLine(scanner, "Enter service id to serve next: ")
			b, err := mgr.MarkServed(serviceID)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Marked served: token %s (%s).\n", b.Token, b.UserName)

		case "4":
			fmt.Println("\nQueue status:")
			for _, row := range mgr.StatusRows() {
				fmt.Println(row)
			}

		case "5":
			fmt.Println(mgr.HistoryGraph())

		case "6":
			// Discard and reconstruct with the same configuration.
			mgr = queue.NewManager(config.DefaultServices)
			fmt.Println("Queues reset.")

		default:
			fmt.Println("Invalid option. Please enter a number from 0 to 6.")
		}
	}
}

func printMenu() {
	fmt.Println("\n=== Virtual Queue Manager ===")
	fmt.Println("1. List services")
	fmt.Println("2. Book queue slot")
	fmt.Println("3. Admin: Mark next user as served")
	fmt.Println("4. Admin: View queue status")
	fmt.Println("5. Show queue-length graph")
	fmt.Println("6. Reset queues")
	fmt.Println("0. Exit")
}

func askLine(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return "0"
	}
	return strings.TrimSpace(scanner.Text())
}
