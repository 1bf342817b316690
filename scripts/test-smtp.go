package main

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Использование: go run test-smtp.go <smtp-host> <smtp-port> <email-to>")
		fmt.Println("Пример: go run test-smtp.go localhost 2525 info@example.com")
		os.Exit(1)
	}

	host := os.Args[1]
	port := os.Args[2]
	to := os.Args[3]

	addr := fmt.Sprintf("%s:%s", host, port)
	fmt.Printf("Подключение к SMTP серверу %s...\n", addr)

	// Создаём клиент
	client, err := smtp.Dial(addr)
	if err != nil {
		log.Fatalf("Ошибка подключения: %v", err)
	}
	defer client.Close()

	fmt.Println("✓ Подключение успешно!")

	// Устанавливаем отправителя
	if err := client.Mail("test@example.org"); err != nil {
		log.Fatalf("Ошибка MAIL FROM: %v", err)
	}
	fmt.Println("✓ MAIL FROM установлен")

	// Устанавливаем получателя
	if err := client.Rcpt(to); err != nil {
		log.Fatalf("Ошибка RCPT TO: %v", err)
	}
	fmt.Printf("✓ RCPT TO установлен для %s\n", to)

	// Отправляем данные
	wc, err := client.Data()
	if err != nil {
		log.Fatalf("Ошибка DATA: %v", err)
	}

	// Multipart-письмо с текстом, HTML и вложением
	message := strings.Join([]string{
		"From: test@example.org",
		"To: " + to,
		"Subject: Test Message",
		"Content-Type: multipart/mixed; boundary=testboundary",
		"",
		"--testboundary",
		"Content-Type: text/plain",
		"",
		"Это тестовое письмо от " + time.Now().Format(time.RFC3339),
		"--testboundary",
		"Content-Type: text/html",
		"",
		"<p>Это <b>тестовое</b> письмо</p>",
		"--testboundary",
		"Content-Type: application/octet-stream",
		"Content-Disposition: attachment; filename=\"hello.txt\"",
		"Content-Transfer-Encoding: base64",
		"",
		"SGVsbG8gV29ybGQ=",
		"--testboundary--",
		"",
	}, "\r\n")

	_, err = wc.Write([]byte(message))
	if err != nil {
		log.Fatalf("Ошибка записи: %v", err)
	}

	err = wc.Close()
	if err != nil {
		log.Fatalf("Ошибка закрытия DATA: %v", err)
	}

	fmt.Println("✓ Письмо отправлено успешно!")
	fmt.Println("Проверьте базу данных или логи сервера")
}
