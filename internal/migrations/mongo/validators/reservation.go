package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"room_ids",
			"check_in",
			"check_out",
			"number_of_guests",
			"total_price",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"room_ids": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 24,
					"maxLength": 24,
				},
			},

			"check_in": bson.M{
				"bsonType": "date",
			},

			"check_out": bson.M{
				"bsonType": "date",
			},

			"number_of_guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"guests": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"_id", "name", "email", "phone"},
					"properties": bson.M{
						"_id":   bson.M{"bsonType": "string"},
						"name":  bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
						"email": bson.M{"bsonType": "string"},
						"phone": bson.M{"bsonType": "string"},
					},
				},
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
