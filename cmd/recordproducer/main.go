package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

func main() {
	var fileName, brokers, topic string
	flag.StringVar(&fileName, "file", "recordsdata.json", "record events file")
	flag.StringVar(&brokers, "brokers", "localhost:9092", "kafka bootstrap servers")
	flag.StringVar(&topic, "topic", "movies", "kafka topic")
	flag.Parse()

	fmt.Println("Creating a kafka producer")

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		log.Fatalf("cannot create producer: %v", err)
	}
	defer producer.Close()

	go func() {
		for e := range producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					log.Printf("delivery failed: %v", ev.TopicPartition)
				}
			}
		}
	}()

	fmt.Println("Reading record events from file " + fileName)

	recordEvents, err := readRecordEvents(fileName)
	if err != nil {
		log.Fatalf("cannot read events: %v", err)
	}

	if err := produceRecordEvents(topic, producer, recordEvents); err != nil {
		log.Fatalf("cannot produce events: %v", err)
	}

	remaining := producer.Flush(10_000)
	if remaining != 0 {
		log.Fatalf("still %d messages not delivered", remaining)
	}
	fmt.Println("all events produced")
}

func readRecordEvents(fileName string) ([]model.RecordEvent, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []model.RecordEvent
	if err := json.NewDecoder(f).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

func produceRecordEvents(topic string, producer *kafka.Producer, events []model.RecordEvent) error {
	for _, re := range events {
		payload, err := json.Marshal(re)
		if err != nil {
			return err
		}
		if err := producer.Produce(&kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Key:            []byte(re.Record.ExternalID),
			Value:          payload,
		}, nil); err != nil {
			return err
		}
	}
	return nil
}
