// Command smoke exercises a running cart server end to end: add twice, set
// an absolute amount, attempt an over-stock update, remove, and print the
// cart and the drained notifications after each step.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
)

const productID = 1

func main() {
	baseURL := os.Getenv("CART_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	steps := []struct {
		name string
		run  func() error
	}{
		{"add product", func() error { return post(baseURL+"/api/cart/items", fmt.Sprintf(`{"product_id":%d}`, productID)) }},
		{"add product again", func() error { return post(baseURL+"/api/cart/items", fmt.Sprintf(`{"product_id":%d}`, productID)) }},
		{"set amount to 5", func() error { return put(fmt.Sprintf("%s/api/cart/items/%d", baseURL, productID), `{"amount":5}`) }},
		{"set amount to 999", func() error { return put(fmt.Sprintf("%s/api/cart/items/%d", baseURL, productID), `{"amount":999}`) }},
		{"remove product", func() error { return del(fmt.Sprintf("%s/api/cart/items/%d", baseURL, productID)) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			log.Fatalf("%s: %v", step.name, err)
		}
		fmt.Printf("== %s\n", step.name)
		dump(baseURL+"/api/cart", "cart")
		dump(baseURL+"/api/notifications", "notifications")
	}
}

func post(url, body string) error {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func put(url, body string) error {
	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	return do(req)
}

func del(url string) error {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	return do(req)
}

func do(req *http.Request) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func dump(url, label string) {
	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("get %s: %v", label, err)
	}
	defer resp.Body.Close()

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Fatalf("decode %s: %v", label, err)
	}
	fmt.Printf("   %s: %s\n", label, payload)
}
