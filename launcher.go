package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

func main() {
	fmt.Println("Запуск MedTrack...")

	cliName := "medtrack"
	if runtime.GOOS == "windows" {
		cliName = "medtrack.exe"
	}
	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server/main.go")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)
	// собираем административный CLI
	if _, err := os.Stat(cliName); os.IsNotExist(err) {
		fmt.Println("Сборка CLI...")
		build := exec.Command("go", "build", "-o", cliName, "./cmd/medtrack/main.go")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		build.Run()
		// если не винда даём права
		if runtime.GOOS != "windows" {
			os.Chmod(cliName, 0755)
		}
	}

	fmt.Println("Сервер запущен: http://localhost:8080")
	// пишем как наполнить базу демо-данными
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\medtrack.exe seed")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./medtrack seed")
	}

	server.Wait()
}
